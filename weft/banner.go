// Copyright 2025 The Weft Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package weft

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	figure "github.com/common-nighthawk/go-figure"
)

var (
	bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	bannerMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// printBanner writes a figlet-style startup banner, adapted from the
// teacher's app/banner.go: bind address, worker pool shape, and a table
// of registered routes in place of the teacher's OpenAPI/HTTP listing.
func (a *App) printBanner() {
	f := figure.NewFigure("weft", "slant", true)
	fmt.Fprintln(os.Stdout, bannerTitleStyle.Render(f.String()))

	meta := fmt.Sprintf(
		"service=%s  addr=%s  initial_workers=%d  scale_factor=%d",
		a.serviceName, a.listener.Addr().String(), a.initialWorkers, a.scaleFactor,
	)
	fmt.Fprintln(os.Stdout, bannerMetaStyle.Render(meta))

	routes := a.tree.Routes()
	if len(routes) == 0 {
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("METHOD", "PATH")
	for _, r := range routes {
		for _, m := range r.Methods {
			t = t.Row(m, r.Path)
		}
	}
	fmt.Fprintln(os.Stdout, t.Render())
}
