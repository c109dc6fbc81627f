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
	"fmt"
	"net/url"

	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/mason"
)

// LinkRelations is where the superkinodb link relation names come from.
const LinkRelations = "/superkinodb/link-relations#"

func entryLocation() string {
	return "/api/"
}

func movieCollectionLocation() string {
	return "/api/movies/"
}

func movieLocation(name string) string {
	return fmt.Sprintf("/api/movies/%s/", url.PathEscape(name))
}

func actorCollectionLocation() string {
	return "/api/actors/"
}

func directorCollectionLocation() string {
	return "/api/directors/"
}

func writerCollectionLocation() string {
	return "/api/writers/"
}

func reviewCollectionLocation(movie string) string {
	return fmt.Sprintf("/api/movies/%s/reviews/", url.PathEscape(movie))
}

func reviewLocation(movie, reviewer string) string {
	return fmt.Sprintf("/api/movies/%s/reviews/%s/",
		url.PathEscape(movie), url.PathEscape(reviewer))
}

// The control vocabulary below pins each well-known relation name to its
// href and metadata. Write controls carry the published schemas.

func addControlAllMovies(b mason.Builder) {
	b.AddControl("superkinodb:movies", movieCollectionLocation(), mason.Attrs{
		"title": "All movies",
	})
}

func addControlAllActors(b mason.Builder) {
	b.AddControl("superkinodb:actors", actorCollectionLocation(), mason.Attrs{
		"title": "All actors",
	})
}

func addControlAllDirectors(b mason.Builder) {
	b.AddControl("superkinodb:directors", directorCollectionLocation(), mason.Attrs{
		"title": "All directors",
	})
}

func addControlAllWriters(b mason.Builder) {
	b.AddControl("superkinodb:writers", writerCollectionLocation(), mason.Attrs{
		"title": "All writers",
	})
}

func addControlAddMovie(b mason.Builder) {
	b.AddControl("add_movie", movieCollectionLocation(), mason.Attrs{
		"method":   "POST",
		"encoding": "json",
		"title":    "Add a movie to the database",
		"schema":   kino.MovieSchema(),
	})
}

func addControlEditMovie(b mason.Builder, movie string) {
	b.AddControl("edit_movie", movieLocation(movie), mason.Attrs{
		"method":   "PUT",
		"encoding": "json",
		"title":    "Edit a movie in the database",
		"schema":   kino.MovieSchema(),
	})
}

func addControlDeleteMovie(b mason.Builder, movie string) {
	b.AddControl("delete_movie", movieLocation(movie), mason.Attrs{
		"method": "DELETE",
		"title":  "Delete a movie from the database",
	})
}

func addControlMovieReviews(b mason.Builder, movie string) {
	b.AddControl("reviews", reviewCollectionLocation(movie), mason.Attrs{
		"title": "Movie review collection",
	})
}

func addControlAddReview(b mason.Builder, movie string) {
	b.AddControl("add_review", reviewCollectionLocation(movie), mason.Attrs{
		"method":   "POST",
		"encoding": "json",
		"title":    "Add review",
		"schema":   kino.ReviewSchema(),
	})
}

func addControlEditReview(b mason.Builder, movie, reviewer string) {
	b.AddControl("edit_review", reviewLocation(movie, reviewer), mason.Attrs{
		"method":   "PUT",
		"encoding": "json",
		"title":    "Edit review",
		"schema":   kino.ReviewSchema(),
	})
}

func addControlDeleteReview(b mason.Builder, movie, reviewer string) {
	b.AddControl("delete_review", reviewLocation(movie, reviewer), mason.Attrs{
		"method": "DELETE",
		"title":  "Delete review",
	})
}
