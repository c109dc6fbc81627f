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

package config

import (
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver  string
	Source  string
	LogMode bool
}

type ServerConfig struct {
	Listen string
}

type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
}

func configDefaults(v *viper.Viper) {
	v.SetDefault("Server.Listen", "127.0.0.1:3000")

	v.SetDefault("DB.Driver", "sqlite3")
	v.SetDefault("DB.Source", "superkinodb.db")
	v.SetDefault("DB.LogMode", "false")
}

func readConfig(v *viper.Viper) (*Config, error) {
	var config Config
	err := v.ReadInConfig()
	if err != nil {
		// defaults only when there's no config file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}
	err = v.Unmarshal(&config)
	return &config, err
}

// TestConfig is an in-memory database configuration for tests. Tests that
// need isolation should point DB.Source at their own temp file.
func TestConfig() (*Config, error) {
	v := viper.New()
	configDefaults(v)
	v.SetDefault("DB.Source", "file::memory:?cache=shared")
	var config Config
	err := v.Unmarshal(&config)
	return &config, err
}

var configFile, configPath, configName string

func SetConfigFile(path string) {
	configFile = path
}

func AddConfigPath(path string) {
	configPath = path
}

func SetConfigName(name string) {
	configName = name
}

func GetConfig() (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	}
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	if configName != "" {
		v.SetConfigName(configName)
	}
	configDefaults(v)
	return readConfig(v)
}
