// Package process stops the headless browser started for PDF export along
// with every helper process it spawned.
package process
