// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"strconv"
	"strings"
)

func itoa(i int) string { return strconv.Itoa(i) }

func spaces(n int) string { return strings.Repeat(" ", max(n, 0)) }
