package main

import (
	"storefront/internal/app/storefront"
)

func main() {
	storefront.Run()
}
