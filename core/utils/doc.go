// Package utils provides common utility functions for the inventory poller.
// It includes loose value conversion helpers used when reading loosely typed
// upstream payloads, where the same field may arrive as a number or a string.
package utils
