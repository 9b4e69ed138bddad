// storage.go
//
// Vehicle catalogue and back-office API for TSE Automobiles
// Copyright (c) 2026 TSE Automobiles SARL
//
// This file is part of tse-catalogue-server.
// tse-catalogue-server is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tse-catalogue-server is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tse-catalogue-server.
// If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Kind selects the per-kind upload rules.
type Kind string

// Upload kinds, mapped to key prefixes in the bucket.
const (
	KindImage    Kind = "images"
	KindDocument Kind = "documents"
)

// Rules holds the validation constraints for one upload kind.
type Rules struct {
	MaxBytes  int64
	MimeTypes []string
}

var rulesByKind = map[Kind]Rules{
	KindImage: {
		MaxBytes:  10 * 1024 * 1024,
		MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
	},
	KindDocument: {
		MaxBytes: 50 * 1024 * 1024,
		MimeTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
		},
	},
}

// RulesFor returns the rules for an upload kind.
func RulesFor(kind Kind) Rules {
	return rulesByKind[kind]
}

// ValidateUpload checks size and MIME type against the rules of the kind.
// It runs before any network call.
func ValidateUpload(kind Kind, contentType string, size int64) error {
	rules, ok := rulesByKind[kind]
	if !ok {
		return fmt.Errorf("type d'upload inconnu: %s", kind)
	}

	if size > rules.MaxBytes {
		return fmt.Errorf("La taille du fichier dépasse la limite de %d MB", rules.MaxBytes/(1024*1024))
	}

	for _, mime := range rules.MimeTypes {
		if strings.EqualFold(contentType, mime) {
			return nil
		}
	}
	return fmt.Errorf("Type de fichier non autorisé: %s", contentType)
}

// UniqueFileName builds a collision-safe object key from an original filename:
// slugified basename + timestamp + random suffix, prefixed with the folder.
func UniqueFileName(original string, folder string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))

	name := slug.Make(base)
	if name == "" {
		name = "fichier"
	}

	key := fmt.Sprintf("%s-%d-%04d%s", name, time.Now().UnixNano(), rand.Intn(10000), ext)
	if folder != "" {
		key = strings.TrimSuffix(folder, "/") + "/" + key
	}
	return key
}

// Store abstracts the object storage backend so services stay testable
// without network mocking.
type Store interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
	PublicURL(key string) string
}
