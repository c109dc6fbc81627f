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
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func (k *Kino) openDB() (err error) {
	var glog logger.Interface
	if k.config.DB.LogMode == false {
		glog = logger.Discard
	} else {
		glog = logger.Default
	}
	cfg := &gorm.Config{
		Logger: glog,
	}

	switch k.config.DB.Driver {
	case "sqlite3":
		k.db, err = gorm.Open(sqlite.Open(k.config.DB.Source), cfg)
	case "mysql":
		k.db, err = gorm.Open(mysql.Open(k.config.DB.Source), cfg)
	case "postgres":
		k.db, err = gorm.Open(postgres.Open(k.config.DB.Source), cfg)
	default:
		err = errors.New("driver not supported")
	}

	if err != nil {
		return
	}

	err = k.db.AutoMigrate(&Actor{}, &Director{}, &Movie{}, &Review{}, &Writer{})
	return
}

func (k *Kino) closeDB() {
	conn, err := k.db.DB()
	if err != nil {
		return
	}
	conn.Close()
}

// isConstraintError reports whether err is a unique constraint violation
// from any of the supported drivers. The storage constraint is the
// authoritative backstop for racing name checks; callers translate this
// into the matching conflict error.
func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // sqlite
		strings.Contains(msg, "Duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key") // postgres
}

func lookupMovie(tx *gorm.DB, name string) (*Movie, error) {
	var movie Movie
	err := tx.Preload("Actors").Preload("Directors").Preload("Writers").
		Where("name = ?", name).First(&movie).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMovieNotFound
	}
	return &movie, err
}

// checkMovieName enforces movie name uniqueness ahead of commit so the
// common case conflicts deterministically instead of on constraint error.
func checkMovieName(tx *gorm.DB, name string) error {
	_, err := lookupMovie(tx, name)
	if err == nil {
		return ErrMovieExists
	}
	if errors.Is(err, ErrMovieNotFound) {
		return nil
	}
	return err
}

func lookupReview(tx *gorm.DB, movieID uint, reviewer string) (*Review, error) {
	var review Review
	err := tx.Where("movie_id = ? and reviewer = ?", movieID, reviewer).
		First(&review).Error
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	return &review, err
}

func checkReviewer(tx *gorm.DB, movieID uint, reviewer string) error {
	_, err := lookupReview(tx, movieID, reviewer)
	if err == nil {
		return ErrReviewExists
	}
	if errors.Is(err, ErrReviewNotFound) {
		return nil
	}
	return err
}

// resolvePeople maps person names to rows of one personnel table,
// creating any that don't exist yet. There is no register-person
// endpoint; first reference from a movie write is the only way in.
func resolvePeople[T any](tx *gorm.DB, names []string, build func(name string) T) ([]T, error) {
	var people []T
	for _, name := range names {
		var p T
		err := tx.Where("name = ?", name).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p = build(name)
			err = tx.Create(&p).Error
		}
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

// sweepOrphans hard deletes rows of one personnel table that no longer
// appear in its movie join table.
func sweepOrphans[T any](tx *gorm.DB, join, key string) error {
	return tx.Unscoped().
		Where(fmt.Sprintf("id not in (select %s from %s)", key, join)).
		Delete(new(T)).Error
}

// cleanupPersonnel removes actors, directors and writers left with zero
// movie associations. Runs inside the transaction of the movie mutation
// that triggered it.
func cleanupPersonnel(tx *gorm.DB) error {
	if err := sweepOrphans[Actor](tx, "movie_actors", "actor_id"); err != nil {
		return err
	}
	if err := sweepOrphans[Director](tx, "movie_directors", "director_id"); err != nil {
		return err
	}
	return sweepOrphans[Writer](tx, "movie_writers", "writer_id")
}
