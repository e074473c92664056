// Package config provides configuration structures and utilities for ycscrape.
// It defines the run options taken from the command line, the optional
// .ycscrape YAML file that describes the markup of the directory being
// scraped, and environment overrides loaded from .env files.
package config
