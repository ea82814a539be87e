package main

import (
	"github.com/salesdesk/oms/internal/app"
	"github.com/salesdesk/oms/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
