package main

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Encode renders data as text in the given encoding
func Encode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case Raw:
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		if err := checkRawText(string(data)); err != nil {
			return "", err
		}
		return string(data), nil
	case Hex:
		return hex.EncodeToString(data), nil
	case Base32:
		return base32.StdEncoding.EncodeToString(data), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, enc)
	}
}

// checkRawText rejects the characters the clipboard uses to separate cells,
// so a Raw cell always survives a copy and paste
func checkRawText(text string) error {
	if strings.ContainsAny(text, "\t\r\n") {
		return ErrDelimiterInText
	}
	return nil
}

// Decode parses text in the given encoding back into bytes.
//
// Base64 input has its trailing '=' padding stripped and is then decoded with
// the unpadded alphabet, so both padded and unpadded forms are accepted. An
// '=' anywhere else is rejected.
func Decode(text string, enc Encoding) ([]byte, error) {
	switch enc {
	case Raw:
		if err := checkRawText(text); err != nil {
			return nil, err
		}
		return []byte(text), nil
	case Hex:
		data, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
		}
		return data, nil
	case Base32:
		data, err := base32.StdEncoding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: base32: %v", ErrInvalidEncoding, err)
		}
		return data, nil
	case Base64:
		data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(text, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: base64: %v", ErrInvalidEncoding, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, enc)
	}
}

// Transcode converts text from one encoding to another
func Transcode(text string, from, to Encoding) (string, error) {
	if from == to {
		return text, nil
	}
	data, err := Decode(text, from)
	if err != nil {
		return "", err
	}
	return Encode(data, to)
}
