// Package config loads chart documents.
//
// A chart is written in TOML. It names the scales shared by its marks, the
// figure attributes that shape the plot area, and one table per bars mark:
//
//	name = "revenue"
//
//	[figure]
//	width = 800
//	height = 500
//	padding_y = 0.025
//
//	[[scales]]
//	name = "x"
//	kind = "ordinal"
//
//	[[scales]]
//	name = "y"
//	kind = "linear"
//
//	[[marks]]
//	name = "sales"
//	x = [1, 2, 3]
//	y = [[5, -3, 2], [1, 4, -1]]
//	type = "stacked"
//	scales = { x = "x", y = "y" }
//	padding = { x = 4 }
//
// Omitted attributes take the defaults applied by [Chart.SetDefaults].
// [Chart.Validate] reports every problem in one [errors.ValidationErrors].
package config
