// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is the explicit serialize/deserialize boundary for cart persistence.
type Store interface {
	Load(sessionID string) ([]Item, error)
	Save(sessionID string, items []Item) error
}

// FileStore persists one JSON file per session under a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(sessionID string) string {
	// session IDs are UUIDs or usernames; strip path separators anyway
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == '.' {
			return '_'
		}
		return r
	}, sessionID)
	return filepath.Join(s.dir, name+".json")
}

func (s *FileStore) Load(sessionID string) ([]Item, error) {
	b, err := os.ReadFile(s.path(sessionID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FileStore) Save(sessionID string, items []Item) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(sessionID), b, 0o644)
}

// MemoryStore keeps carts in memory; used in tests and as a fallback when no
// cart directory is configured.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Item)}
}

func (s *MemoryStore) Load(sessionID string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[sessionID]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Save(sessionID string, items []Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := make([]Item, len(items))
	copy(saved, items)
	s.carts[sessionID] = saved
	return nil
}
