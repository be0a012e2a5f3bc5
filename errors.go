package main

import "htmlscope/internal/scanner"

type SituatedErr interface {
	Unwrap() error
	At() scanner.Location
}
