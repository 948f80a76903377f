/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/eagle/internal/config"
	"github.com/Paintersrp/eagle/internal/logging"
	"github.com/Paintersrp/eagle/internal/state"
	"github.com/Paintersrp/eagle/pkg/cmd/root"
)

func Execute() {
	// Get Home Directory for locating config files
	home, err := state.GetHomeDir()
	cobra.CheckErr(err)

	// Log to file until the root command applies flags and config level
	if logFile := logging.Setup(logging.Options{Path: config.GetLogPath(home)}); logFile != nil {
		defer logFile.Close()
	}

	s, err := state.NewStateAt(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		s.Close()
		os.Exit(1)
	}
}
