package ui

// ANSI helpers for line output. Under the none theme they all return "".

// ColorRed returns the error color.
func ColorRed() string { return Current().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return Current().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return Current().Warning }

// ColorMagenta returns the info color.
func ColorMagenta() string { return Current().Info }

// ColorCyan returns the secondary color.
func ColorCyan() string { return Current().Secondary }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return Current().Underline }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return Current().Reset }
