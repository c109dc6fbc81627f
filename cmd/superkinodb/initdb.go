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

package main

import (
	"fmt"

	"github.com/defsub/superkinodb/kino"
	"github.com/defsub/superkinodb/lib/date"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initdb()
	},
}

var testgenCmd = &cobra.Command{
	Use:   "testgen",
	Short: "populate the database with test data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return testgen()
	},
}

func initdb() error {
	k := kino.NewKino(getConfig())
	// Open runs migrations
	err := k.Open()
	if err != nil {
		return err
	}
	k.Close()
	return nil
}

func testgen() error {
	k := kino.NewKino(getConfig())
	err := k.Open()
	if err != nil {
		return err
	}
	defer k.Close()

	for i := 0; i < 4; i++ {
		fields := kino.MovieFields{
			Name:      fmt.Sprintf("test-movie%d", i),
			Release:   date.FormatDate(date.Today()),
			Genre:     "Drama",
			Actors:    []string{fmt.Sprintf("actor%d", i)},
			Directors: []string{fmt.Sprintf("director%d", i)},
			Writers:   []string{fmt.Sprintf("writer%d", i)},
		}
		_, err := k.CreateMovie(fields)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	initCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	testgenCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(testgenCmd)
}
