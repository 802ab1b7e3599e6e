// Package cmd implements the shelfpack command-line interface.
//
// Every subcommand lives in its own file with a NewXCmd constructor returning
// a *cobra.Command. The root command groups them into packing commands
// (pack, compare, render, export, view) and utility commands (config,
// version). Input files are loaded by extension through loadInput, so all
// packing commands accept the same formats:
//   - .csv, .tsv, .txt: delimited item lists
//   - .xlsx: Excel item lists
//   - .dxf: closed shapes, one item per bounding box
//   - .pack: the item list DSL
//   - .json, .yaml, .yml: saved projects
package cmd
