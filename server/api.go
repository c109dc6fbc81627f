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
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"

	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/mason"
)

func writeMason(w http.ResponseWriter, status int, body mason.Builder) {
	w.Header().Set("Content-Type", mason.MediaType)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.Encode(body)
}

// recvJson reads a write body into v. A missing or non-JSON body is an
// unsupported media type. Well-formed JSON of the wrong shape is a
// schema violation instead; field-level checks happen later in the
// catalog layer.
func (h *handler) recvJson(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, _ := ioutil.ReadAll(r.Body)
	if len(body) == 0 {
		unsupportedMediaErr(w, r)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			errorResponse(w, r, http.StatusBadRequest,
				"Invalid JSON schema", err.Error())
		} else {
			unsupportedMediaErr(w, r)
		}
		return false
	}
	return true
}

// GET /api/
// 200: namespace + link to the movie collection
func (h *handler) apiIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != entryLocation() {
		// the entry pattern is a catch-all prefix
		notFoundErr(w, r)
		return
	}
	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", entryLocation(), nil)
	addControlAllMovies(body)
	writeMason(w, http.StatusOK, body)
}

// GET /api/movies/ > movies ordered by name, short form
// 200: success
func (h *handler) apiMovies(w http.ResponseWriter, r *http.Request) {
	movies := h.kino.Movies()

	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", movieCollectionLocation(), nil)
	addControlAddMovie(body)
	addControlAllActors(body)
	addControlAllDirectors(body)
	addControlAllWriters(body)

	list := make([]mason.Builder, 0, len(movies))
	for i := range movies {
		item := movieData(&movies[i], true)
		item.AddControl("self", movieLocation(movies[i].Name), nil)
		list = append(list, item)
	}
	body["movies"] = list

	writeMason(w, http.StatusOK, body)
}

// POST /api/movies/ < MovieFields{}
// 201: created, Location header
// 400: schema violation
// 409: name conflict
// 415: no JSON body
func (h *handler) apiMovieCreate(w http.ResponseWriter, r *http.Request) {
	var fields kino.MovieFields
	if !h.recvJson(w, r, &fields) {
		return
	}
	movie, err := h.kino.CreateMovie(fields)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.Header().Set("Location", movieLocation(movie.Name))
	w.WriteHeader(http.StatusCreated)
}

// GET /api/movies/name/ > full movie
// 200: success
// 404: unknown movie
func (h *handler) apiMovieGet(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, "")
	if movie == nil {
		return
	}

	body := movieData(movie, false)
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", movieLocation(movie.Name), nil)
	addControlAllMovies(body)
	addControlEditMovie(body, movie.Name)
	addControlDeleteMovie(body, movie.Name)
	addControlMovieReviews(body, movie.Name)

	writeMason(w, http.StatusOK, body)
}

// PUT /api/movies/name/ < MovieFields{} (full replacement)
// 204: replaced
// 400: schema violation
// 404: unknown movie
// 409: rename conflict
// 415: no JSON body
func (h *handler) apiMovieUpdate(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, "")
	if movie == nil {
		return
	}
	var fields kino.MovieFields
	if !h.recvJson(w, r, &fields) {
		return
	}
	err := h.kino.UpdateMovie(movie, fields)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/movies/name/
// 204: deleted, reviews cascade, orphaned personnel swept
// 404: unknown movie
// 409: integrity violation
func (h *handler) apiMovieDelete(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, "")
	if movie == nil {
		return
	}
	err := h.kino.DeleteMovie(movie)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/movies/name/reviews/ > reviews, short form
// 200: success, empty list if none
// 404: unknown movie
func (h *handler) apiReviews(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, "reviews/")
	if movie == nil {
		return
	}
	reviews := h.kino.Reviews(movie)

	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", reviewCollectionLocation(movie.Name), nil)
	body.AddControl("movie", movieLocation(movie.Name), nil)
	addControlAddReview(body, movie.Name)

	list := make([]mason.Builder, 0, len(reviews))
	for i := range reviews {
		item := reviewData(&reviews[i], true)
		item.AddControl("self", reviewLocation(movie.Name, reviews[i].Reviewer), nil)
		list = append(list, item)
	}
	body["reviews"] = list

	writeMason(w, http.StatusOK, body)
}

// POST /api/movies/name/reviews/ < ReviewFields{}
// 201: created, Location header
// 400: schema violation
// 404: unknown movie
// 409: reviewer already reviewed this movie
// 415: no JSON body
func (h *handler) apiReviewCreate(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, "reviews/")
	if movie == nil {
		return
	}
	var fields kino.ReviewFields
	if !h.recvJson(w, r, &fields) {
		return
	}
	review, err := h.kino.CreateReview(movie, fields)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.Header().Set("Location", reviewLocation(movie.Name, review.Reviewer))
	w.WriteHeader(http.StatusCreated)
}

// GET /api/movies/name/reviews/reviewer/ > full review
// 200: success
// 404: unknown movie or review
func (h *handler) apiReviewGet(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, reviewTail(r))
	if movie == nil {
		return
	}
	review := h.resolveReview(w, r, movie)
	if review == nil {
		return
	}

	body := reviewData(review, false)
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", reviewLocation(movie.Name, review.Reviewer), nil)
	addControlMovieReviews(body, movie.Name)
	addControlEditReview(body, movie.Name, review.Reviewer)
	addControlDeleteReview(body, movie.Name, review.Reviewer)

	writeMason(w, http.StatusOK, body)
}

// PUT /api/movies/name/reviews/reviewer/ < ReviewFields{} (full replacement)
// 204: replaced
// 400: schema violation
// 404: unknown movie or review
// 409: reviewer rename conflict
// 415: no JSON body
func (h *handler) apiReviewUpdate(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, reviewTail(r))
	if movie == nil {
		return
	}
	review := h.resolveReview(w, r, movie)
	if review == nil {
		return
	}
	var fields kino.ReviewFields
	if !h.recvJson(w, r, &fields) {
		return
	}
	err := h.kino.UpdateReview(review, fields)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/movies/name/reviews/reviewer/
// 204: deleted
// 404: unknown movie or review
func (h *handler) apiReviewDelete(w http.ResponseWriter, r *http.Request) {
	movie := h.resolveMovie(w, r, reviewTail(r))
	if movie == nil {
		return
	}
	review := h.resolveReview(w, r, movie)
	if review == nil {
		return
	}
	err := h.kino.DeleteReview(review)
	if err != nil {
		storageErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/actors/ > actors ordered by name with their movies
// 200: success
func (h *handler) apiActors(w http.ResponseWriter, r *http.Request) {
	actors := h.kino.Actors()

	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", actorCollectionLocation(), nil)
	addControlAllMovies(body)
	addControlAllDirectors(body)
	addControlAllWriters(body)

	list := make([]mason.Builder, 0, len(actors))
	for _, a := range actors {
		list = append(list, personData(a.Name, a.BornOn, a.Movies))
	}
	body["actors"] = list

	writeMason(w, http.StatusOK, body)
}

// GET /api/directors/
// 200: success
func (h *handler) apiDirectors(w http.ResponseWriter, r *http.Request) {
	directors := h.kino.Directors()

	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", directorCollectionLocation(), nil)
	addControlAllMovies(body)
	addControlAllActors(body)
	addControlAllWriters(body)

	list := make([]mason.Builder, 0, len(directors))
	for _, d := range directors {
		list = append(list, personData(d.Name, d.BornOn, d.Movies))
	}
	body["directors"] = list

	writeMason(w, http.StatusOK, body)
}

// GET /api/writers/
// 200: success
func (h *handler) apiWriters(w http.ResponseWriter, r *http.Request) {
	writers := h.kino.Writers()

	body := mason.NewBuilder()
	body.AddNamespace("superkinodb", LinkRelations)
	body.AddControl("self", writerCollectionLocation(), nil)
	addControlAllMovies(body)
	addControlAllActors(body)
	addControlAllDirectors(body)

	list := make([]mason.Builder, 0, len(writers))
	for _, p := range writers {
		list = append(list, personData(p.Name, p.BornOn, p.Movies))
	}
	body["writers"] = list

	writeMason(w, http.StatusOK, body)
}

// methodNotAllowed rejects a verb that is never valid for the resource,
// listing the ones that are.
func (h *handler) methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		errorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed",
			"request not supported for this resource")
	}
}
