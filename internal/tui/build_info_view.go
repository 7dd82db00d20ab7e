// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-finance-keeper/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Название приложения: Finance Keeper\n")
	b.WriteString("Версия: " + info.BuildVersion() + "\n")
	b.WriteString("Дата: " + info.BuildDate() + "\n")
	b.WriteString("Коммит: " + info.BuildCommit())

	return renderPage("О ПРОГРАММЕ", b.String(), "esc: назад")
}
