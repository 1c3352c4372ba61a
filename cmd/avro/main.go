package main

import (
	"github.com/iemejia/avro/internal/cmd"
)

func main() {
	cmd.Execute()
}
