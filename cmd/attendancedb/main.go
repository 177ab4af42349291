package main

import (
	"log"
	"os"

	"student_attendance/config"
	"student_attendance/logger"
)

func main() {
	// stdout carries only the answer tokens
	std := log.New(os.Stderr, "ATTENDANCEDB : ", log.LstdFlags|log.Lmicroseconds)
	log.SetOutput(os.Stderr)

	cfg := config.LoadCollaborator()
	appLog := logger.New(std, logger.Options{
		RollbarToken: cfg.RollbarToken,
		Environment:  cfg.Environment,
	})

	cli := commandLine{
		cfg:    cfg,
		log:    appLog,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	ok, err := cli.run(os.Args)
	logger.Close()
	if err != nil && err != errHelp {
		std.Printf("error: %s", err)
	}
	if !ok {
		os.Exit(1)
	}
}
