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

package server

import (
	"time"

	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/date"
	"github.com/defsub/superkinodb/lib/mason"
)

// Payload fragments for the Mason bodies. Short forms are used in
// collection listings, full forms on item resources.

func movieData(m *kino.Movie, shortForm bool) mason.Builder {
	data := mason.NewBuilder()
	data["name"] = m.Name
	data["release"] = date.FormatDate(m.Release)
	data["genre"] = m.Genre

	if shortForm {
		return data
	}

	data["actors"] = actorNames(m.Actors)
	data["directors"] = directorNames(m.Directors)
	data["writers"] = writerNames(m.Writers)
	return data
}

func reviewData(rev *kino.Review, shortForm bool) mason.Builder {
	data := mason.NewBuilder()
	data["reviewer"] = rev.Reviewer
	data["score"] = rev.Score

	if shortForm {
		return data
	}

	data["review_text"] = rev.ReviewText
	return data
}

func personData(name string, born time.Time, movies []kino.Movie) mason.Builder {
	data := mason.NewBuilder()
	data["name"] = name
	if !born.IsZero() {
		data["born_on"] = date.FormatDate(born)
	}
	data["movies"] = movieNames(movies)
	return data
}

func movieNames(movies []kino.Movie) []string {
	names := make([]string, 0, len(movies))
	for _, m := range movies {
		names = append(names, m.Name)
	}
	return names
}

func actorNames(actors []kino.Actor) []string {
	names := make([]string, 0, len(actors))
	for _, a := range actors {
		names = append(names, a.Name)
	}
	return names
}

func directorNames(directors []kino.Director) []string {
	names := make([]string, 0, len(directors))
	for _, d := range directors {
		names = append(names, d.Name)
	}
	return names
}

func writerNames(writers []kino.Writer) []string {
	names := make([]string, 0, len(writers))
	for _, w := range writers {
		names = append(names, w.Name)
	}
	return names
}
