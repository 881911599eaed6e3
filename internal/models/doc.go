// Package models lists the OpenAI models that aksharmala can use: speech
// models for fetch-audio, image models and chat models for fetch-images.
package models
