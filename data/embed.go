// Package data embeds the fixed lookup tables used by the text pipeline.
package data

import _ "embed"

//go:embed slang.txt
var SlangTable string

//go:embed stopwords.txt
var Stopwords string

//go:embed fillers.txt
var Fillers string

//go:embed lexicon.txt
var SentimentLexicon string

//go:embed rootwords.txt
var RootWords []byte
