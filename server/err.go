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
	"errors"
	"net/http"

	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/log"
	"github.com/defsub/superkinodb/lib/mason"
)

// errorResponse writes a Mason error body. The mutated resource URL rides
// along so clients don't have to remember what they asked for.
func errorResponse(w http.ResponseWriter, r *http.Request, status int, title, details string) {
	body := mason.NewBuilder()
	body["resource_url"] = r.URL.Path
	body.AddError(title, details)
	writeMason(w, status, body)
}

func notFoundErr(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "Not found",
		"the requested resource does not exist")
}

func unsupportedMediaErr(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusUnsupportedMediaType, "Unsupported media type",
		"requests must be in JSON format")
}

func serverErr(w http.ResponseWriter, r *http.Request, err error) {
	log.Println(err)
	errorResponse(w, r, http.StatusInternalServerError, "Internal server error",
		"unexpected storage failure")
}

// storageErr maps catalog errors to statuses: validation 400, missing
// 404, uniqueness conflicts 409, anything else 500.
func storageErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, kino.ErrValidation):
		errorResponse(w, r, http.StatusBadRequest, "Invalid JSON schema", err.Error())
	case errors.Is(err, kino.ErrMovieNotFound), errors.Is(err, kino.ErrReviewNotFound):
		notFoundErr(w, r)
	case errors.Is(err, kino.ErrMovieExists):
		errorResponse(w, r, http.StatusConflict, "Movie already exists",
			"movies must be named uniquely")
	case errors.Is(err, kino.ErrReviewExists):
		errorResponse(w, r, http.StatusConflict, "Entry by this reviewer already exists",
			"a reviewer may review a movie only once")
	case errors.Is(err, kino.ErrConflict):
		errorResponse(w, r, http.StatusConflict, "Database conflict", err.Error())
	default:
		serverErr(w, r, err)
	}
}
