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
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/defsub/superkinodb/config"
	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/log"
)

type handler struct {
	kino *kino.Kino
}

// NewHandler builds the /api route table over an open catalog.
//
// pat treats a pattern with a trailing slash as a prefix match and tries
// patterns in registration order, so deeper resources are registered
// first and the entry point goes last.
func NewHandler(k *kino.Kino) http.Handler {
	h := &handler{kino: k}
	mux := pat.New()

	// review item
	mux.Get("/api/movies/:name/reviews/:reviewer/", http.HandlerFunc(h.apiReviewGet))
	mux.Put("/api/movies/:name/reviews/:reviewer/", http.HandlerFunc(h.apiReviewUpdate))
	mux.Del("/api/movies/:name/reviews/:reviewer/", http.HandlerFunc(h.apiReviewDelete))
	mux.Post("/api/movies/:name/reviews/:reviewer/", h.methodNotAllowed("GET, PUT, DELETE"))

	// review collection
	mux.Get("/api/movies/:name/reviews/", http.HandlerFunc(h.apiReviews))
	mux.Post("/api/movies/:name/reviews/", http.HandlerFunc(h.apiReviewCreate))
	mux.Put("/api/movies/:name/reviews/", h.methodNotAllowed("GET, POST"))
	mux.Del("/api/movies/:name/reviews/", h.methodNotAllowed("GET, POST"))

	// movie item
	mux.Get("/api/movies/:name/", http.HandlerFunc(h.apiMovieGet))
	mux.Put("/api/movies/:name/", http.HandlerFunc(h.apiMovieUpdate))
	mux.Del("/api/movies/:name/", http.HandlerFunc(h.apiMovieDelete))
	mux.Post("/api/movies/:name/", h.methodNotAllowed("GET, PUT, DELETE"))

	// movie collection
	mux.Get("/api/movies/", http.HandlerFunc(h.apiMovies))
	mux.Post("/api/movies/", http.HandlerFunc(h.apiMovieCreate))
	mux.Put("/api/movies/", h.methodNotAllowed("GET, POST"))
	mux.Del("/api/movies/", h.methodNotAllowed("GET, POST"))

	// personnel collections are read only
	mux.Get("/api/actors/", http.HandlerFunc(h.apiActors))
	mux.Post("/api/actors/", h.methodNotAllowed("GET"))
	mux.Put("/api/actors/", h.methodNotAllowed("GET"))
	mux.Del("/api/actors/", h.methodNotAllowed("GET"))

	mux.Get("/api/directors/", http.HandlerFunc(h.apiDirectors))
	mux.Post("/api/directors/", h.methodNotAllowed("GET"))
	mux.Put("/api/directors/", h.methodNotAllowed("GET"))
	mux.Del("/api/directors/", h.methodNotAllowed("GET"))

	mux.Get("/api/writers/", http.HandlerFunc(h.apiWriters))
	mux.Post("/api/writers/", h.methodNotAllowed("GET"))
	mux.Put("/api/writers/", h.methodNotAllowed("GET"))
	mux.Del("/api/writers/", h.methodNotAllowed("GET"))

	// entry point
	mux.Get("/api/", http.HandlerFunc(h.apiIndex))

	return mux
}

func Serve(config *config.Config) error {
	k := kino.NewKino(config)
	err := k.Open()
	if err != nil {
		return err
	}
	defer k.Close()

	log.Printf("listening on %s\n", config.Server.Listen)
	http.Handle("/", NewHandler(k))
	return http.ListenAndServe(config.Server.Listen, nil)
}
