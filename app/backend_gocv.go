//go:build !nogocv

package app

import _ "github.com/soocke/timestamp-extractor-go/domain/video/gocvsrc"
