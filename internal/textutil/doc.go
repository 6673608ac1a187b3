// Package textutil normalizes short metadata strings for comparison.
package textutil
