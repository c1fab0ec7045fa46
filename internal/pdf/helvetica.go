package pdf

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Standard Helvetica advance widths in 1/1000 of the text size, for the
// printable ASCII range starting at space (0x20). Taken from the base-14 AFM
// metrics; these drive line wrapping and the erase rectangles, so they must
// match what viewers render for the built-in font.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, // space ! " # $ % & ' ( )
	389, 584, 278, 333, 278, 278, 556, 556, 556, 556, // * + , - . / 0 1 2 3
	556, 556, 556, 556, 556, 556, 278, 278, 584, 584, // 4 5 6 7 8 9 : ; < =
	584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, // > ? @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, 667, 778, // H I J K L M N O P Q
	722, 667, 611, 722, 667, 944, 667, 667, 611, 278, // R S T U V W X Y Z [
	278, 278, 469, 556, 333, 556, 556, 500, 556, 556, // \ ] ^ _ ` a b c d e
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // f g h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, // p q r s t u v w x y
	500, 334, 260, 334, 584, // z { | } ~
}

const helveticaDefaultWidth = 556

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func runeWidth(r rune) int {
	if r >= 0x20 && r <= 0x7E {
		return helveticaWidths[r-0x20]
	}
	// accented Latin letters advance like their base letter
	if stripped, _, err := transform.String(accentStripper, string(r)); err == nil {
		rs := []rune(stripped)
		if len(rs) == 1 && rs[0] != r && rs[0] >= 0x20 && rs[0] <= 0x7E {
			return helveticaWidths[rs[0]-0x20]
		}
	}
	return helveticaDefaultWidth
}

// measureText returns the rendered width of s at the given text size.
func measureText(s string, size float64) float64 {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return float64(total) * size / 1000.0
}

// lineHeight approximates the font's line spacing at the given size.
func lineHeight(size float64) float64 {
	return size * 1.15
}
