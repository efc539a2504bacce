// Package remotestore implements interfaces.RemoteStore over a Firebase
// Realtime Database (Admin SDK) and over an in-memory tree.
package remotestore

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPath = errors.New("invalid path")

// SplitPath breaks a slash separated path into segments. The root path yields no segments.
func SplitPath(path string) ([]string, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, nil
	}

	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg == "" || strings.ContainsAny(seg, ".$#[]") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segments, nil
}

func lastSegment(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}
