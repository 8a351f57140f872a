// Copyright 2026 The monadicast Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

/*
Monadicast lifts transpiler-emitted Go sources into idiomatic Go.

Usage:

	monadicast [flags] <path>

The path is a single file or a directory tree. Every .go file found is
parsed, run through the enabled lifting passes and printed to standard
output, or written below the -o directory with its relative path
preserved. Findings are printed to standard error. A file the pipeline
cannot handle is reported and skipped; the rest of the batch still runs.

The flags are:

	-c file
		Read configuration from file. See the package documentation of
		github.com/rusty-catz/monadicast for the YAML schema.
	-o dir
		Write lifted sources under dir instead of standard output.
	-jobs n
		Process up to n files concurrently. Zero, the default, uses one
		worker per CPU.
	-json
		Render findings as JSON lines instead of file:line:col text.
	-log level
		Set the log level: debug, info, warn or error.
	-report
		Also report applied rewrites, not only declined ones.

Each flag's default can be set through an environment variable:
MONADICAST_CONFIG, MONADICAST_JOBS, MONADICAST_JSON and MONADICAST_LOG.

The exit code is 0 when every file lifted cleanly, 1 when any file
failed, and 2 for usage errors.
*/
package main
