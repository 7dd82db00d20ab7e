// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-finance-keeper/internal/service"
	"github.com/MKhiriev/go-finance-keeper/internal/store"
)

// humanizeError turns service errors into messages for the status line.
func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrNetwork):
		return "Отсутствует сеть или Сервер недоступен"
	case errors.Is(err, service.ErrWrongPassword):
		return "Неверный логин или пароль"
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return "Такой логин уже занят"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Некорректные данные"
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrTokenIsExpired),
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Сессия истекла, войдите заново"
	case errors.Is(err, service.ErrInvalidEntry):
		return "Некорректная запись"
	case errors.Is(err, service.ErrStorage):
		return "Ошибка локального хранилища"
	}

	return err.Error()
}

// syncErrorMessage describes the failure of the last sync cycle.
func syncErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return "Синхронизация не выполнена: " + humanizeError(err)
}
