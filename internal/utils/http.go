package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
)

// WriteJSON writes data as a JSON body with the given status and returns the
// number of body bytes written.
//
// A nil slice is written as [] so collection endpoints always return an
// array. When data cannot be marshaled the response is a plain 500.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := marshalJSON(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

func marshalJSON(data any) ([]byte, error) {
	if v := reflect.ValueOf(data); v.Kind() == reflect.Slice && v.IsNil() {
		return []byte("[]"), nil
	}
	return json.Marshal(data)
}
