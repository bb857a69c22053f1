// Package cleaning joins normalized candidate records against the geo
// factor and payband reference tables, derives geo-adjusted targets
// and the variance between current and target compensation, and
// partitions every input row into exactly one of the complete or
// incomplete output sets. A row-level data gap never fails the run; it
// routes the row to the incomplete set with its reasons recorded.
package cleaning
