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

// Package kino is the movie catalog: movies, their personnel and their
// reviews, stored relationally. Every write runs inside one transaction
// covering validation side effects, auto-created personnel and the
// orphan sweep, so a failed mutation never leaves partial state.
package kino

import (
	"errors"
	"fmt"
	"time"

	"github.com/defsub/superkinodb/config"
	"github.com/defsub/superkinodb/lib/date"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrMovieExists    = errors.New("movie already exists")
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review by this reviewer already exists")
	ErrValidation     = errors.New("invalid fields")
	ErrConflict       = errors.New("database conflict")
)

func validationErr(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

type Kino struct {
	config   *config.Config
	db       *gorm.DB
	validate *validator.Validate
}

func NewKino(config *config.Config) *Kino {
	return &Kino{
		config:   config,
		validate: validator.New(),
	}
}

func (k *Kino) Open() (err error) {
	err = k.openDB()
	return
}

func (k *Kino) Close() {
	k.closeDB()
}

// MovieFields is the write body for movie create and replace. Personnel
// are referenced by name only; unknown names create new rows.
type MovieFields struct {
	Name      string   `json:"name" validate:"required"`
	Release   string   `json:"release" validate:"omitempty,datetime=2006-01-02"`
	Genre     string   `json:"genre"`
	Actors    []string `json:"actors" validate:"dive,required"`
	Directors []string `json:"directors" validate:"dive,required"`
	Writers   []string `json:"writers" validate:"dive,required"`
}

func (f MovieFields) releaseDate() (time.Time, error) {
	if f.Release == "" {
		return date.Today(), nil
	}
	return date.ParseDate(f.Release)
}

// ReviewFields is the write body for review create and replace. Score is
// a pointer so an explicit 0.0 passes required.
type ReviewFields struct {
	Reviewer   string   `json:"reviewer" validate:"required"`
	ReviewText string   `json:"review_text" validate:"max=1000"`
	Score      *float64 `json:"score" validate:"required,gte=0,lte=10"`
}

func (k *Kino) Movies() []Movie {
	var movies []Movie
	k.db.Order("name").Find(&movies)
	return movies
}

func (k *Kino) LookupMovie(name string) (*Movie, error) {
	return lookupMovie(k.db, name)
}

func (k *Kino) CreateMovie(fields MovieFields) (*Movie, error) {
	if err := k.validate.Struct(fields); err != nil {
		return nil, validationErr(err)
	}
	release, err := fields.releaseDate()
	if err != nil {
		return nil, validationErr(err)
	}

	var movie *Movie
	err = k.db.Transaction(func(tx *gorm.DB) error {
		if err := checkMovieName(tx, fields.Name); err != nil {
			return err
		}
		m, err := stageMovie(tx, fields, release)
		if err != nil {
			return err
		}
		if err := tx.Create(m).Error; err != nil {
			if isConstraintError(err) {
				return ErrMovieExists
			}
			return err
		}
		movie = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// UpdateMovie replaces the movie's fields and association sets from a
// full write body, then sweeps orphaned personnel. A rename that
// collides with another movie is a conflict. Overlapping replacements
// are not coordinated beyond the transaction; last commit wins.
func (k *Kino) UpdateMovie(movie *Movie, fields MovieFields) error {
	if err := k.validate.Struct(fields); err != nil {
		return validationErr(err)
	}
	release, err := fields.releaseDate()
	if err != nil {
		return validationErr(err)
	}

	return k.db.Transaction(func(tx *gorm.DB) error {
		if fields.Name != movie.Name {
			if err := checkMovieName(tx, fields.Name); err != nil {
				return err
			}
		}
		staged, err := stageMovie(tx, fields, release)
		if err != nil {
			return err
		}
		movie.Name = staged.Name
		movie.Release = staged.Release
		movie.Genre = staged.Genre
		if err := tx.Save(movie).Error; err != nil {
			if isConstraintError(err) {
				return ErrMovieExists
			}
			return err
		}
		if err := tx.Model(movie).Association("Actors").Replace(staged.Actors); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Directors").Replace(staged.Directors); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Writers").Replace(staged.Writers); err != nil {
			return err
		}
		return cleanupPersonnel(tx)
	})
}

// DeleteMovie removes the movie, its reviews and any personnel orphaned
// by the removal.
func (k *Kino) DeleteMovie(movie *Movie) error {
	err := k.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(movie).Association("Actors").Clear(); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Directors").Clear(); err != nil {
			return err
		}
		if err := tx.Model(movie).Association("Writers").Clear(); err != nil {
			return err
		}
		if err := tx.Unscoped().Where("movie_id = ?", movie.ID).
			Delete(&Review{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(movie).Error; err != nil {
			return err
		}
		return cleanupPersonnel(tx)
	})
	if isConstraintError(err) {
		// commit-time integrity violation surfaces as a conflict
		return ErrConflict
	}
	return err
}

// stageMovie builds an unsaved movie from a write body, resolving each
// named person inside the caller's transaction.
func stageMovie(tx *gorm.DB, fields MovieFields, release time.Time) (*Movie, error) {
	actors, err := resolvePeople(tx, fields.Actors,
		func(name string) Actor { return Actor{Name: name} })
	if err != nil {
		return nil, err
	}
	directors, err := resolvePeople(tx, fields.Directors,
		func(name string) Director { return Director{Name: name} })
	if err != nil {
		return nil, err
	}
	writers, err := resolvePeople(tx, fields.Writers,
		func(name string) Writer { return Writer{Name: name} })
	if err != nil {
		return nil, err
	}
	return &Movie{
		Name:      fields.Name,
		Release:   release,
		Genre:     fields.Genre,
		Actors:    actors,
		Directors: directors,
		Writers:   writers,
	}, nil
}

func (k *Kino) Actors() []Actor {
	var actors []Actor
	k.db.Preload("Movies").Order("name").Find(&actors)
	return actors
}

func (k *Kino) Directors() []Director {
	var directors []Director
	k.db.Preload("Movies").Order("name").Find(&directors)
	return directors
}

func (k *Kino) Writers() []Writer {
	var writers []Writer
	k.db.Preload("Movies").Order("name").Find(&writers)
	return writers
}

func (k *Kino) Reviews(movie *Movie) []Review {
	var reviews []Review
	k.db.Where("movie_id = ?", movie.ID).Order("reviewer").Find(&reviews)
	return reviews
}

func (k *Kino) LookupReview(movie *Movie, reviewer string) (*Review, error) {
	return lookupReview(k.db, movie.ID, reviewer)
}

func (k *Kino) CreateReview(movie *Movie, fields ReviewFields) (*Review, error) {
	if err := k.validate.Struct(fields); err != nil {
		return nil, validationErr(err)
	}

	var review *Review
	err := k.db.Transaction(func(tx *gorm.DB) error {
		if err := checkReviewer(tx, movie.ID, fields.Reviewer); err != nil {
			return err
		}
		r := &Review{
			Reviewer:   fields.Reviewer,
			ReviewText: fields.ReviewText,
			Score:      *fields.Score,
			MovieID:    movie.ID,
		}
		if err := tx.Create(r).Error; err != nil {
			if isConstraintError(err) {
				return ErrReviewExists
			}
			return err
		}
		review = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview replaces reviewer, text and score. A reviewer change that
// collides with another review of the same movie is a conflict.
func (k *Kino) UpdateReview(review *Review, fields ReviewFields) error {
	if err := k.validate.Struct(fields); err != nil {
		return validationErr(err)
	}

	return k.db.Transaction(func(tx *gorm.DB) error {
		if fields.Reviewer != review.Reviewer {
			if err := checkReviewer(tx, review.MovieID, fields.Reviewer); err != nil {
				return err
			}
		}
		review.Reviewer = fields.Reviewer
		review.ReviewText = fields.ReviewText
		review.Score = *fields.Score
		if err := tx.Save(review).Error; err != nil {
			if isConstraintError(err) {
				return ErrReviewExists
			}
			return err
		}
		return nil
	})
}

func (k *Kino) DeleteReview(review *Review) error {
	return k.db.Unscoped().Delete(review).Error
}
