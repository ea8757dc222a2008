package shell

const usageText = `Commands:
  info                     show the current configuration and dataset
  predict [date]           generate tickets for a date (default: next draw)
  backtest <date>          predict for a past date and score vs the actual draw
  range <start> <end>      backtest every draw between two dates
  bias                     show the contact bias profile of the current matrix
  ranges                   show the per-position number ranges
  overlap                  show numbers valid in every position
  filters [n1,n2,...]      filter capture rates vs history, or explain a ticket
  export <path>            write the last prediction to a CSV file
  set <key> <value>        change a setting (e.g. set strategy contact_first)
  help                     this text
  exit                     leave the shell

Dates are YYYY-MM-DD.`
