// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// ExpandHome - replace a leading "~/" with the user's home directory
func ExpandHome(path string) string {
	if len(path) < 2 || "~/" != path[:2] {
		return path
	}
	home, err := os.UserHomeDir()
	if nil != err {
		return path
	}
	return filepath.Join(home, path[2:])
}

// AbsolutePath - resolve a configured path against directory
//
// an empty path stays empty so an unset optional file remains unset
func AbsolutePath(directory string, path string) string {
	if "" == path {
		return ""
	}
	path = ExpandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(directory, path)
	}
	return filepath.Clean(path)
}

// RegularFileExists - true only for an existing file that is not a
// directory
func RegularFileExists(name string) bool {
	info, err := os.Stat(name)
	return nil == err && info.Mode().IsRegular()
}
