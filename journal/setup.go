// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package journal

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// key prefixes
const (
	entryPrefix     = 'E'
	referencePrefix = 'R'
)

const currentVersion = 0x100

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// Journal - an open journal database
type Journal struct {
	sync.Mutex
	log *logger.L
	db  *leveldb.DB
	now func() time.Time
}

// Open - open or create the journal database
func Open(fileName string) (*Journal, error) {
	log := logger.New("journal")

	db, version, err := getDB(fileName)
	if nil != err {
		log.Errorf("open: %q  error: %s", fileName, err)
		return nil, err
	}

	// ensure no database downgrade
	if version > currentVersion {
		db.Close()
		log.Criticalf("journal version: %d > current version: %d", version, currentVersion)
		return nil, fmt.Errorf("journal version: %d > current version: %d", version, currentVersion)
	}

	if 0 == version {
		err = putVersion(db, currentVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	}

	log.Infof("opened: %q", fileName)

	return &Journal{
		log: log,
		db:  db,
		now: time.Now,
	}, nil
}

// Close - close the database, further calls return leveldb.ErrClosed
func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()
	j.log.Info("closing")
	return j.db.Close()
}

// return:
//   database handle
//   version number
func getDB(name string) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
