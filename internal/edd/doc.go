// Package edd defines the in-memory representation of an EDD workbook while
// it moves through the validation pipeline.
//
// An EDD ("Electronic Data Deliverable") carries two wide tables: one station
// row per physical sample event and one result row per analyte measurement.
// Both are modeled as a Table of Rows keyed by canonical column names, so the
// pipeline never depends on the column order of the laboratory export.
//
// Every Row carries an Annotations accumulator. Stages record their findings
// (corrections applied or data-quality errors) through AddCorrection and
// AddError; nothing is ever retracted. Only at export time are the findings
// flattened into the "acao" and "comentario_correcao" audit columns that the
// field operators read.
package edd
