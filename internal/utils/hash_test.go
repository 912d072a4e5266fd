// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"sync"
	"testing"
)

func TestResourceHash(t *testing.T) {
	tests := []struct {
		data string
		want string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"hello", "5d41402abc4b2a76b9719d911017c592"},
	}
	for _, tt := range tests {
		if got := ResourceHash([]byte(tt.data)); got != tt.want {
			t.Fatalf("ResourceHash(%q) = %s, want %s", tt.data, got, tt.want)
		}
	}
}

func TestResourceHash_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := ResourceHash([]byte("hello")); got != "5d41402abc4b2a76b9719d911017c592" {
				t.Errorf("unexpected hash %s", got)
			}
		}()
	}
	wg.Wait()
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()
	if len(a) != 36 || a == b {
		t.Fatalf("unexpected ids %q, %q", a, b)
	}
}
