package http

// Classify expone classify a los tests externos.
var Classify = classify
