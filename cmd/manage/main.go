package main

import "github.com/localnerve/starwars-api/cmd/manage/commands"

func main() {
	commands.Execute()
}
