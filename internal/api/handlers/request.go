package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("handlers: empty request body")
	ErrInvalidParam = errors.New("handlers: invalid parameter")
)

// DecodeJSON декодирует тело запроса. Неизвестные поля и данные после объекта считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if dec.More() {
		return errors.New("handlers: unexpected data after JSON object")
	}

	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeAndValidate декодирует тело и проверяет теги validate модели
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return validate.Struct(v)
}

// PathInt64 извлекает положительный int64 параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	return parsePositive(mux.Vars(r)[name], name)
}

// QueryInt64 извлекает положительный int64 параметр строки запроса
func QueryInt64(r *http.Request, name string) (int64, error) {
	return parsePositive(r.URL.Query().Get(name), name)
}

func parsePositive(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return id, nil
}
