package item

import (
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

func formatInt64(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat64(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeBinary(enc BinaryEncoding, v []byte) string {
	switch enc {
	case BinaryBase64:
		return base64.StdEncoding.EncodeToString(v)
	default:
		return hex.EncodeToString(v)
	}
}

func decodeBinary(enc BinaryEncoding, s string) ([]byte, error) {
	switch enc {
	case BinaryBase64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return hex.DecodeString(s)
	}
}
