// Package bancochile extracts statements published by Banco de Chile:
// account cartolas as XLS/XLSX spreadsheets or as PDF text, and credit
// card statements with their billed and unbilled sections.
package bancochile
