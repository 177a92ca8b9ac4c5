// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package chart renders a results.Dataset as a grouped bar chart with one
// serial and one parallel bar per process count, each annotated with its
// value, and saves it as an image.
package chart
