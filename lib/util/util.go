package util

import "fmt"

// Format size in bytes to human readable format.
func FormatBytesSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}

	if size < 1024*1024 {
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	}

	if size < 1024*1024*1024 {
		return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
	}

	return fmt.Sprintf("%.2f GB", float64(size)/1024/1024/1024)
}

// Format an amount of money with two decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}
