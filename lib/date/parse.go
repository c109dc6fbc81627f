// Copyright (C) 2022 The Superkinodb Authors.
//
// This file is part of Superkinodb.
//
// Superkinodb is free software: you can redistribute it and/or modify it under
// the terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Superkinodb is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Superkinodb.  If not, see <https://www.gnu.org/licenses/>.

package date

import (
	"time"
)

// ISO is the calendar date layout used on the wire.
const ISO = "2006-01-02"

// ParseDate parses an ISO calendar date (yyyy-mm-dd). The date must match
// the layout exactly.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(ISO, date)
}

// FormatDate renders a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(ISO)
}

// Today is the current date truncated to day precision in UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
