// Package utils holds the ambient plumbing shared by the rehost command:
// a Viper-backed ConfigurationLoader and a zap LoggerFactory.
package utils
