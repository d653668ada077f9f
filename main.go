package main

import (
	"github.com/lehigh-university-libraries/inspire-dojson/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/inspire-dojson/format/cdsxml"
	_ "github.com/lehigh-university-libraries/inspire-dojson/format/jsonrecord"
	_ "github.com/lehigh-university-libraries/inspire-dojson/format/marcjson"
	_ "github.com/lehigh-university-libraries/inspire-dojson/format/marcxml"
)

func main() {
	cmd.Execute()
}
