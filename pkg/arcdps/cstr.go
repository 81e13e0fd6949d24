// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"strings"
	"unsafe"

	"golang.org/x/text/encoding/unicode"
)

// maxCStringLen bounds decoding of host strings that lack a terminator.
const maxCStringLen = 1 << 16

// goString copies a NUL-terminated narrow string owned by the host.
// A nil pointer decodes to nil, never to an empty string.
func goString(p unsafe.Pointer) *string {
	if p == nil {
		return nil
	}
	s := readCString((*byte)(p))
	return &s
}

func readCString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for n < maxCStringLen && *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// cString returns a NUL-terminated copy of s. The caller keeps the slice
// alive for as long as the host may read it.
func cString(s string) []byte {
	buf := make([]byte, len(s)+1)
	copy(buf, s)
	return buf
}

// bufPtr returns the address of the first byte of a NUL-terminated buffer.
func bufPtr(buf []byte) uintptr {
	if len(buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&buf[0]))
}

// stripAccountPrefix removes the single leading ':' the host puts in front
// of account names.
func stripAccountPrefix(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimPrefix(*name, ":")
	return &trimmed
}

// utf16String decodes a NUL-terminated little-endian UTF-16 string.
func utf16String(p *uint16) (string, error) {
	if p == nil {
		return "", nil
	}
	n := 0
	for n < maxCStringLen && *(*uint16)(unsafe.Add(unsafe.Pointer(p), n*2)) != 0 {
		n++
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(p)), n*2)
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return "", err //nolint:wrapcheck // wrapped by caller with host context
	}
	return string(decoded), nil
}
