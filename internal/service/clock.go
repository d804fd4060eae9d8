package service

import "time"

func nowUTC() time.Time { return time.Now().UTC() }

func parseDate(s string) (time.Time, error) { return time.Parse("2006-01-02", s) }
