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

package kino

import (
	"time"

	"github.com/defsub/superkinodb/lib/gorm"
)

// Movie is the catalog root. Name is the natural key used in URLs so it
// must be globally unique. Personnel associations go through three join
// tables; reviews are owned and go away with the movie.
type Movie struct {
	gorm.Model
	Name    string `gorm:"uniqueIndex:idx_movie_name;not null"`
	Release time.Time
	Genre   string

	Actors    []Actor    `gorm:"many2many:movie_actors"`
	Directors []Director `gorm:"many2many:movie_directors"`
	Writers   []Writer   `gorm:"many2many:movie_writers"`
	Reviews   []Review   `gorm:"constraint:OnDelete:CASCADE"`
}

// Actor, Director and Writer are structurally identical but never
// substitutable for each other, so they stay separate tables. None of
// them can be created or deleted directly; movie writes create them on
// first reference and the orphan sweep removes the unreferenced ones.

type Actor struct {
	gorm.Model
	Name   string `gorm:"uniqueIndex:idx_actor_name;not null"`
	BornOn time.Time
	Movies []Movie `gorm:"many2many:movie_actors"`
}

type Director struct {
	gorm.Model
	Name   string `gorm:"uniqueIndex:idx_director_name;not null"`
	BornOn time.Time
	Movies []Movie `gorm:"many2many:movie_directors"`
}

type Writer struct {
	gorm.Model
	Name   string `gorm:"uniqueIndex:idx_writer_name;not null"`
	BornOn time.Time
	Movies []Movie `gorm:"many2many:movie_writers"`
}

// Review of one movie by one reviewer. The (movie, reviewer) pair is
// unique; the same reviewer may still review other movies.
type Review struct {
	gorm.Model
	Reviewer   string `gorm:"uniqueIndex:idx_review_movie_reviewer;not null"`
	ReviewText string
	Score      float64 `gorm:"not null"`
	MovieID    uint    `gorm:"uniqueIndex:idx_review_movie_reviewer;not null"`
}
