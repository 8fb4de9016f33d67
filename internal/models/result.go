// Package models defines the data structures shared by the server and CLI.
package models

// AnalysisResult is the outcome of analyzing one uploaded document: the four
// document statistics plus the display name the file was uploaded under.
// All counts are non-negative, and neither WordCount nor WhitespaceCount can
// exceed CharacterCount.
type AnalysisResult struct {
	Filename        string `json:"filename"`
	WordCount       int    `json:"word_count"`
	CharacterCount  int    `json:"character_count"`
	WhitespaceCount int    `json:"whitespace_count"`
	LineCount       int    `json:"line_count"`
}
