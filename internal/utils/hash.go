// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"sync"
)

// hasherPool holds reusable MD5 instances for resource hashing.
var hasherPool = sync.Pool{
	New: func() any {
		return md5.New()
	},
}

// ResourceHash returns the hex MD5 digest of resource data, the identifier
// en-media elements reference resources by.
func ResourceHash(data []byte) string {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return hex.EncodeToString(sum)
}
