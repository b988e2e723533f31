// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/bwsdata/fault"
	"github.com/bitmark-inc/bwsdata/util"
)

const fileWatcherLoggerPrefix = "file-watcher"

// fileWatcher - call reload whenever the configuration file changes
//
// the directory is watched so that editors which replace the file are
// still seen
type fileWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	reload   func() error
}

func newFileWatcher(targetFile string, reload func() error) (*fileWatcher, error) {
	log := logger.New(fileWatcherLoggerPrefix)

	filePath, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if !util.RegularFileExists(filePath) {
		return nil, fault.ErrNotFound
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(filePath)); nil != err {
		log.Errorf("watcher add error: %s", err)
		watcher.Close()
		return nil, err
	}

	return &fileWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		reload:   reload,
	}, nil
}

// Run - background process
func (w *fileWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	log := w.log
	defer w.watcher.Close()

	log.Infof("watching: %s", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			log.Debugf("file event: %s", event)

			if eventFileRemove(event) {
				log.Warnf("file: %s removed, keeping current settings", w.filePath)
				continue loop
			}
			if !eventFileChange(event) {
				continue loop
			}
			if err := w.reload(); nil != err {
				log.Errorf("reload: %s  error: %s", w.filePath, err)
				continue loop
			}
			log.Info("configuration reloaded")

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}
	log.Info("shutting down…")
}

func eventFileRemove(event fsnotify.Event) bool {
	return event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func eventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
