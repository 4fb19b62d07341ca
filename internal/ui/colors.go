package ui

// The Color* accessors return the escape sequence for a role in the active
// theme, or the empty string when colors are disabled.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed marks errors.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen marks results and success.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow marks warnings and command names.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue marks primary labels.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta marks expressions.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan marks secondary values such as counts and timings.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorDim marks de-emphasized text.
func ColorDim() string { return GetCurrentTheme().Secondary }

// ColorBold starts bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline starts underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }
