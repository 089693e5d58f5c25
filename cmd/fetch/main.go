package main

import (
    "fmt"
    "os"

    "marketdata/internal/bootstrap"
)

func main() {
    if err := newRootCmd(bootstrap.Build).Execute(); err != nil {
        fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
        os.Exit(1)
    }
}
