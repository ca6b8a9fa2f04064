package main

import (
	"storefront/internal/app/shopapi"
)

func main() {
	shopapi.Run()
}
