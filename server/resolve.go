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
)

// Entity resolvers turn natural-key path segments into stored entities
// before the handler body runs. A failed resolution writes the 404 and
// returns nil; handlers just bail out.
//
// The trailing-slash route patterns are prefix matches, so each resolver
// first rebuilds the canonical path from the captured params; anything
// deeper than the resource itself does not exist.

func (h *handler) resolveMovie(w http.ResponseWriter, r *http.Request, tail string) *kino.Movie {
	name := r.URL.Query().Get(":name")
	if r.URL.Path != "/api/movies/"+name+"/"+tail {
		notFoundErr(w, r)
		return nil
	}
	movie, err := h.kino.LookupMovie(name)
	if err != nil {
		if errors.Is(err, kino.ErrMovieNotFound) {
			notFoundErr(w, r)
		} else {
			serverErr(w, r, err)
		}
		return nil
	}
	return movie
}

func (h *handler) resolveReview(w http.ResponseWriter, r *http.Request,
	movie *kino.Movie) *kino.Review {
	// the path is already canonical through the reviewer segment
	reviewer := r.URL.Query().Get(":reviewer")
	review, err := h.kino.LookupReview(movie, reviewer)
	if err != nil {
		if errors.Is(err, kino.ErrReviewNotFound) {
			notFoundErr(w, r)
		} else {
			serverErr(w, r, err)
		}
		return nil
	}
	return review
}

// reviewTail is the path below a movie item for one of its reviews.
func reviewTail(r *http.Request) string {
	return "reviews/" + r.URL.Query().Get(":reviewer") + "/"
}
