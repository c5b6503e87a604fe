// Copyright (c) 2025 The VestaChain developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import "github.com/vestachain/vesta/metrics"

var metricEventsIndexed = metrics.LazyLoadCounter("node_events_indexed_count")
