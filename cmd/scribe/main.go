package main

import "github.com/joho/godotenv"

const version = "0.1.0"

func main() {
	// A .env file in the working directory may carry OPENAI_API_KEY
	_ = godotenv.Load()

	Execute()
}
